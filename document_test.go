package hastitle_test

import (
	"testing"

	"github.com/fwojciec/hastitle"
	"github.com/stretchr/testify/assert"
)

func TestComputeHash(t *testing.T) {
	t.Parallel()

	a := hastitle.ComputeHash("<head><title>A</title></head>")
	b := hastitle.ComputeHash("<head><title>B</title></head>")

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, hastitle.ComputeHash("<head><title>A</title></head>"))
}

func TestFinding_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires run ID", func(t *testing.T) {
		t.Parallel()

		f := &hastitle.Finding{Path: "index.html"}

		assert.Equal(t, hastitle.EINVALID, hastitle.ErrorCode(f.Validate()))
	})

	t.Run("requires path", func(t *testing.T) {
		t.Parallel()

		f := &hastitle.Finding{RunID: "run-1"}

		assert.Equal(t, hastitle.EINVALID, hastitle.ErrorCode(f.Validate()))
	})

	t.Run("accepts complete finding", func(t *testing.T) {
		t.Parallel()

		f := &hastitle.Finding{RunID: "run-1", Path: "index.html"}

		assert.NoError(t, f.Validate())
	})
}

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, hastitle.EINVALID, hastitle.ErrorCode((&hastitle.Run{}).Validate()))
	assert.Equal(t, hastitle.EINVALID, hastitle.ErrorCode((&hastitle.Run{Root: ".", Total: 1, Missing: 2}).Validate()))
	assert.Equal(t, hastitle.EINVALID, hastitle.ErrorCode((&hastitle.Run{Root: ".", Total: -1}).Validate()))
	assert.NoError(t, (&hastitle.Run{Root: ".", Total: 2, Missing: 1}).Validate())
}
