package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/jensneuse/abstractlogger"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zapcore"

	"github.com/TykTechnologies/graphql-froid/pkg/transform"
)

const demoBook1 = "RGVtb0Jvb2s6ZXlKaWIyOXJTV1FpT2pGOQ=="

func withTransform(t *testing.T, name string) {
	t.Helper()

	viper.Set(keyTransform, name)
	t.Cleanup(func() {
		viper.Set(keyTransform, transform.NameIdentity)
	})
}

func TestEncode(t *testing.T) {
	t.Run("with type flag", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, runEncode(out, "DemoBook", `{"bookId":1}`))
		assert.Equal(t, demoBook1+"\n", out.String())
	})

	t.Run("type from __typename", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, runEncode(out, "", `{"bookId":1,"__typename":"DemoBook"}`))
		assert.Equal(t, demoBook1+"\n", out.String())
	})

	t.Run("type with a colon", func(t *testing.T) {
		assert.Error(t, runEncode(&bytes.Buffer{}, "Demo:Book", `{"bookId":1}`))
	})

	t.Run("missing type", func(t *testing.T) {
		assert.Error(t, runEncode(&bytes.Buffer{}, "", `{"bookId":1}`))
	})

	t.Run("not an object", func(t *testing.T) {
		assert.Error(t, runEncode(&bytes.Buffer{}, "DemoBook", `[1]`))
		assert.Error(t, runEncode(&bytes.Buffer{}, "DemoBook", `{`))
	})

	t.Run("unknown transform", func(t *testing.T) {
		withTransform(t, "zip")
		assert.Error(t, runEncode(&bytes.Buffer{}, "DemoBook", `{"bookId":1}`))
	})
}

func TestDecode(t *testing.T) {
	t.Run("fields", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, runDecode(out, demoBook1, false))
		assert.Equal(t, `{"__typename":"DemoBook","bookId":1}`+"\n", out.String())
	})

	t.Run("fields with id", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, runDecode(out, demoBook1, true))
		assert.Equal(t, `{"__typename":"DemoBook","bookId":1,"id":"`+demoBook1+`"}`+"\n", out.String())
	})

	t.Run("malformed id", func(t *testing.T) {
		err := runDecode(&bytes.Buffer{}, "RGVtb0F1dGhvcjp7ImF1dGhvcklkIjasdfo0fQ==", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MalformedGlobalId")
	})

	t.Run("brotli round trip", func(t *testing.T) {
		withTransform(t, transform.NameBrotli)

		encoded := &bytes.Buffer{}
		require.NoError(t, runEncode(encoded, "DemoAuthor", `{"authorId":4}`))

		decoded := &bytes.Buffer{}
		require.NoError(t, runDecode(decoded, string(bytes.TrimSpace(encoded.Bytes())), false))
		assert.Equal(t, `{"__typename":"DemoAuthor","authorId":4}`+"\n", decoded.String())
	})
}

func TestRootCommand(t *testing.T) {
	out := &bytes.Buffer{}
	rootCmd.SetOutput(out)
	rootCmd.SetArgs([]string{"encode", "--type", "DemoBook", `{"bookId":1}`})
	t.Cleanup(func() {
		rootCmd.SetOutput(nil)
		rootCmd.SetArgs(nil)
		encodeTypeName = ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, demoBook1+"\n", out.String())
}

func TestServeHandler(t *testing.T) {
	viper.Set(keyPath, "/graphql")
	viper.Set(keyCacheSize, 16)
	t.Cleanup(func() {
		viper.Set(keyCacheSize, 0)
	})

	handler, err := newServeHandler(log.NoopLogger)
	require.NoError(t, err)

	body := `{"query":"query ($id: ID!) { node(id: $id) { id } }","variables":{"id":"` + demoBook1 + `"}}`
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), gjson.GetBytes(w.Body.Bytes(), "data.node.bookId").Int())
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/other", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAbstractLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, abstractLevel(zapcore.DebugLevel))
	assert.Equal(t, log.InfoLevel, abstractLevel(zapcore.InfoLevel))
	assert.Equal(t, log.WarnLevel, abstractLevel(zapcore.WarnLevel))
	assert.Equal(t, log.ErrorLevel, abstractLevel(zapcore.ErrorLevel))
}
