package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Senticor-ai/project-sub006/internal/domain/validation"
	"github.com/Senticor-ai/project-sub006/internal/infrastructure/celeval"
)

func TestWarmRules(t *testing.T) {
	eval, err := celeval.New()
	require.NoError(t, err)

	t.Run("broken rules are logged once", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		rules, err := validation.NewRuleSet([]validation.CelRule{
			{ID: "a", Expression: `bucket ==`},
			{ID: "b", When: `((`, Expression: `true`},
		})
		require.NoError(t, err)

		warmRules(eval, rules, zap.New(core))

		warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Some rules do not compile", warnings[0].Message)
		msg, ok := warnings[0].ContextMap()["error"].(string)
		require.True(t, ok)
		assert.Contains(t, msg, "rule a")
		assert.Contains(t, msg, "rule b")
	})

	t.Run("valid rules log nothing", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		rules, err := validation.NewRuleSet([]validation.CelRule{
			{ID: "a", Expression: `bucket == "next"`},
		})
		require.NoError(t, err)

		warmRules(eval, rules, zap.New(core))

		assert.Zero(t, logs.Len())
	})
}
