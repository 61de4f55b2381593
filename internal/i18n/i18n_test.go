package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	assert.Equal(t, "同じタスクに依存関係を設定することはできません", Japanese.T(DependencySelf))
	assert.Equal(t, "A task cannot depend on itself", English.T(DependencySelf))
	assert.Equal(t, "no.such.key", English.T("no.such.key"))
}

func TestTf(t *testing.T) {
	assert.Equal(t, "タスクの作成に失敗しました: boom", Japanese.Tf(TaskCreateFailed, "boom"))
	assert.Equal(t, "タスクの作成に失敗しました", Japanese.Tf(TaskCreateFailed, ""))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "フェーズ", Japanese.Label("phase"))
	assert.Equal(t, "In progress", English.Label("in_progress"))
	assert.Equal(t, "mystery", English.Label("mystery"))
}

func TestParse(t *testing.T) {
	assert.Equal(t, English, Parse("en"))
	assert.Equal(t, Japanese, Parse(""))
	assert.Equal(t, Japanese, Parse("fr"))
}
