// Package readmodel mantém o registro global de contratos de serialização das
// projeções de leitura. Cada forma de projeção é registrada uma única vez,
// de maneira explícita, durante o bootstrap do processo e antes de qualquer
// tráfego de leitura ou escrita no read store.
package readmodel

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Codec define o contrato de serialização de uma projeção.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec serializa projeções como documentos JSON, tolerante a campos
// desconhecidos na desserialização (evolução aditiva de esquema).
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

var (
	mu     sync.RWMutex
	codecs = make(map[string]Codec)
)

// Register associa um codec ao nome de uma projeção. O registro é idempotente:
// registrar o mesmo nome novamente é um no-op, preservando o contrato firmado
// no bootstrap.
func Register(name string, codec Codec) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := codecs[name]; exists {
		return
	}
	codecs[name] = codec
}

// CodecFor devolve o codec registrado para a projeção informada.
func CodecFor(name string) (Codec, error) {
	mu.RLock()
	defer mu.RUnlock()
	codec, found := codecs[name]
	if !found {
		return nil, fmt.Errorf("no codec registered for projection %q", name)
	}
	return codec, nil
}
