package jsonutil_test

import (
	"testing"

	"github.com/revlog-project/revlog/pkg/jsonutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalMarshal_SortsKeys(t *testing.T) {
	in := map[string]any{"b": 2, "a": 1, "c": map[string]any{"z": true, "y": nil}}
	out, err := jsonutil.CanonicalMarshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":{"y":null,"z":true}}`, string(out))
}

func TestCanonicalMarshal_Deterministic(t *testing.T) {
	in := map[string]string{"a.txt": "x", "b.txt": "z", "c.txt": ""}
	first, err := jsonutil.CanonicalMarshal(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := jsonutil.CanonicalMarshal(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCanonicalMarshal_Struct(t *testing.T) {
	type rec struct {
		Name string `json:"name"`
		Seq  int64  `json:"seq"`
	}
	out, err := jsonutil.CanonicalMarshal(rec{Name: "repo1", Seq: 3})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"repo1","seq":3}`, string(out))
}

func TestCanonicalMarshal_Unencodable(t *testing.T) {
	_, err := jsonutil.CanonicalMarshal(make(chan int))
	assert.Error(t, err)
}
