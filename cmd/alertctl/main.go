// Package main provides the alertctl command line client.
package main

func main() {
	Execute()
}
