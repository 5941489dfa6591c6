package readmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-crm/pkg/infrastructure/readmodel"
)

type sample struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRegisterIsIdempotent(t *testing.T) {
	readmodel.Register("sample", readmodel.JSONCodec{})
	readmodel.Register("sample", readmodel.JSONCodec{})

	codec, err := readmodel.CodecFor("sample")
	require.NoError(t, err)
	assert.NotNil(t, codec)
}

func TestCodecForUnknownProjection(t *testing.T) {
	_, err := readmodel.CodecFor("never-registered")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "never-registered")
}

func TestJSONCodecToleratesUnknownFields(t *testing.T) {
	codec := readmodel.JSONCodec{}

	// evolução aditiva de esquema: campos desconhecidos são ignorados
	var decoded sample
	require.NoError(t, codec.Unmarshal([]byte(`{"id":"1","name":"Ana","extra":"field"}`), &decoded))

	assert.Equal(t, sample{ID: "1", Name: "Ana"}, decoded)
}

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := readmodel.JSONCodec{}

	data, err := codec.Marshal(sample{ID: "1", Name: "Ana"})
	require.NoError(t, err)

	var decoded sample
	require.NoError(t, codec.Unmarshal(data, &decoded))
	assert.Equal(t, sample{ID: "1", Name: "Ana"}, decoded)
}
