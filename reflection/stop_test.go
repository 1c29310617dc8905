package reflection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tailored-agentic-units/goagent/reflection"
)

func TestStopPolicy_ShouldStop(t *testing.T) {
	policy := reflection.DefaultStopPolicy()

	tests := []struct {
		feedback string
		want     bool
	}{
		{"无需改进", true},
		{"无需改进。回答已经很好。", true},
		{"  完美实现  ", true},
		{"无需修改", true},
		{"总体不错。\n无需修改", true},
		{"\n\n无需改进\n", true},
		{"完美实现了吗？还差一点", false},
		{"部分无需改进，但结论需要补充", false},
		{"需要改进：缺少边界条件", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.feedback, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.ShouldStop(tt.feedback))
		})
	}
}

func TestStopPolicy_Merge(t *testing.T) {
	policy := reflection.DefaultStopPolicy()
	policy.Merge(&reflection.StopPolicy{Exact: []string{"LGTM"}})

	assert.Equal(t, []string{"LGTM"}, policy.Exact)
	assert.Equal(t, reflection.DefaultStopPolicy().Prefix, policy.Prefix)
	assert.True(t, policy.ShouldStop("LGTM"))
	assert.False(t, policy.ShouldStop("完美实现"))
}

func TestConfig_Merge(t *testing.T) {
	cfg := reflection.DefaultConfig()
	cfg.Merge(&reflection.Config{
		MaxIterations: 7,
		Templates:     reflection.Templates{Refine: "F:{feedback}"},
	})

	assert.Equal(t, 7, cfg.MaxIterations)
	assert.Equal(t, reflection.DefaultInitialTemplate, cfg.Templates.Initial)
	assert.Equal(t, reflection.DefaultReflectTemplate, cfg.Templates.Reflect)
	assert.Equal(t, "F:{feedback}", cfg.Templates.Refine)
}
