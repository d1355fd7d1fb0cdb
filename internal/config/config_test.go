package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateOnStartup(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug always migrates", "debug", false, true},
		{"release skips by default", "release", false, false},
		{"release migrates when forced", "release", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ForceMigrate: tt.force}
			cfg.Server.Mode = tt.mode
			assert.Equal(t, tt.want, cfg.MigrateOnStartup())
		})
	}
}
