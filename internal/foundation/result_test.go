package foundation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTupleAndToTuple(t *testing.T) {
	r := FromTuple[string, error]("post", nil)
	require.True(t, r.IsOk())
	v, err := r.ToTuple()
	require.NoError(t, err)
	assert.Equal(t, "post", v)

	r = FromTuple[string, error]("ignored", errors.New("nope"))
	require.False(t, r.IsOk())
	v, err = r.ToTuple()
	require.Error(t, err)
	assert.Empty(t, v)
}

func TestFirstOk(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	calls := 0

	r := FirstOk(nil,
		func() Result[string, error] { calls++; return Err[string, error](first) },
		func() Result[string, error] { calls++; return Ok[string, error]("local") },
		func() Result[string, error] { calls++; return Err[string, error](second) },
	)
	v, err := r.ToTuple()
	require.NoError(t, err)
	assert.Equal(t, "local", v)
	assert.Equal(t, 2, calls)

	r = FirstOk(nil,
		func() Result[string, error] { return Err[string, error](first) },
		func() Result[string, error] { return Err[string, error](second) },
	)
	_, err = r.ToTuple()
	assert.Equal(t, second, err)

	assert.False(t, FirstOk[string, error](nil).IsOk())
}

func TestFirstOk_NextStopsChain(t *testing.T) {
	stop := errors.New("stop")
	calls := 0

	r := FirstOk(func(err error) bool { return !errors.Is(err, stop) },
		func() Result[int, error] { calls++; return Err[int, error](stop) },
		func() Result[int, error] { calls++; return Ok[int, error](1) },
	)
	_, err := r.ToTuple()
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
