package store

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// encMode uses Core Deterministic Encoding: the same snapshot always
// produces the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("store: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("store: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode serialises a snapshot
func Encode(snap *models.Snapshot) ([]byte, error) {
	return encMode.Marshal(snap)
}

// Decode parses bytes produced by Encode
func Decode(data []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := decMode.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Diagnose returns CBOR diagnostic notation for stored bytes
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
