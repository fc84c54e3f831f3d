package email

import (
	"testing"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AllTemplatesWithPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			body, err := Render(name, data)
			require.NoError(t, err)
			for _, v := range data {
				assert.Contains(t, body, v)
			}
		})
	}
}

func TestRender_EscapesData(t *testing.T) {
	body, err := Render(TemplateWelcome, map[string]string{"UserName": "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestSendEmail_DisabledWithoutKey(t *testing.T) {
	logger := zerolog.Nop()
	c := NewClient(&config.Config{}, &logger)

	assert.False(t, c.Enabled())
	assert.NoError(t, c.SendWelcomeEmail("jane@example.com", "Jane"))
}
