package tasks

import (
	"testing"

	"rallyround/internal/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCustomTaskRejectsBadSpec(t *testing.T) {
	s := NewScheduler("localhost:6379", "", "", 0, logger.New("test"))

	err := s.RegisterCustomTask("not a cron spec", TaskTypeFundraiserClose, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron spec")
}
