package localize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateTermsLongestMatchWins(t *testing.T) {
	tr := NewTranslator()

	// "large language model" must not be chopped into "language model".
	out := tr.TranslateTerms("a large language model for code")
	assert.Contains(t, out, "大语言模型")
	assert.NotContains(t, out, "大语言模型模型")
}

func TestTranslateTermsCaseInsensitive(t *testing.T) {
	tr := NewTranslator()

	assert.Contains(t, tr.TranslateTerms("Deep Learning with PyTorch"), "深度学习")
}

func TestTranslateTagsKeepsUnknownAndChinese(t *testing.T) {
	tr := NewTranslator()

	tags := tr.TranslateTags([]string{"tutorial", "已翻译", "pytorch"})
	assert.Equal(t, "教程", tags[0])
	assert.Equal(t, "已翻译", tags[1])
	assert.Equal(t, "pytorch", tags[2])
}

func TestTranslateDifficultyAndSourceType(t *testing.T) {
	tr := NewTranslator()

	assert.Equal(t, "高级", tr.TranslateDifficulty("advanced"))
	assert.Equal(t, "weird", tr.TranslateDifficulty("weird"))
	assert.Equal(t, "arXiv论文", tr.TranslateSourceType("arxiv"))
	assert.Equal(t, "GitHub开源", tr.TranslateSourceType("github"))
}

func TestCategoryDisplayName(t *testing.T) {
	tr := NewTranslator()

	assert.Equal(t, "机器学习", tr.CategoryDisplayName("machine-learning"))
	assert.Equal(t, "not-a-category", tr.CategoryDisplayName("not-a-category"))
}

func TestGenerateSummary(t *testing.T) {
	tr := NewTranslator()

	assert.Equal(t, "暂无描述", tr.GenerateSummary("", "", ""))

	// Short Chinese descriptions pass through untouched.
	assert.Equal(t, "一个深度学习框架", tr.GenerateSummary("title", "一个深度学习框架", ""))

	out := tr.GenerateSummary("Toolkit", "A deep learning toolkit", "")
	assert.Contains(t, out, "深度学习")
}
