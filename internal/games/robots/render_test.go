package robots

import (
	"strings"
	"testing"

	"github.com/vovakirdan/robot-survival/internal/core"
)

func TestRenderHUDClampsCounters(t *testing.T) {
	tests := []struct {
		name       string
		lives      int
		progress   float64
		wantHearts int
		wantBar    string
	}{
		{"normal", 2, 0.5, 2, "[======      ]"},
		{"negative lives", -1, 0, 0, "[            ]"},
		{"overflow", MaxLives + 4, 1.5, MaxLives, "[============]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := core.NewScreen(80, 24)
			renderHUD(screen, &Snapshot{HUD: HUD{Level: 1, Lives: tt.lives, Progress: tt.progress}})

			if got := strings.Count(screen.Row(0), "♥"); got != tt.wantHearts {
				t.Errorf("hearts = %d, want %d", got, tt.wantHearts)
			}
			if row := screen.Row(1); !strings.Contains(row, tt.wantBar) {
				t.Errorf("progress row %q missing %q", row, tt.wantBar)
			}
		})
	}
}
