package haptic

import "log/slog"

// Impactor fires impacts through a Player. It satisfies the banner haptic
// capability.
type Impactor struct {
	player *Player
	sound  string
	logger *slog.Logger
}

// NewImpactor creates an impactor that plays sound, or the synthesized tick
// when sound is empty.
func NewImpactor(player *Player, sound string, logger *slog.Logger) *Impactor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Impactor{player: player, sound: sound, logger: logger}
}

// Preload decodes the configured sound so the first impact is not delayed.
func (i *Impactor) Preload() error {
	if i.sound == "" {
		return nil
	}
	_, err := i.player.Load(i.sound)
	return err
}

// Impact plays the impact. Playback failures are logged, never returned;
// a missing impact must not block a banner.
func (i *Impactor) Impact() {
	var err error
	if i.sound != "" {
		err = i.player.PlayFile(i.sound)
	} else {
		err = i.player.PlayTick()
	}
	if err != nil {
		i.logger.Warn("haptic impact failed", "sound", i.sound, "error", err)
	}
}
