package helpers

import (
	"github.com/cyphera/delegatable/constants"
)

// IsValidStage reports whether stage names a known deployment stage.
func IsValidStage(stage string) bool {
	switch stage {
	case constants.StageProd, constants.StageDev, constants.StageLocal:
		return true
	}
	return false
}
