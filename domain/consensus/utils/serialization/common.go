package serialization

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/util/binaryserializer"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

var errMalformed = errors.New("errMalformed")

// maxVarBytesLength caps length-prefixed fields so a malformed length
// prefix cannot cause a huge allocation.
const maxVarBytesLength = 1 << 26 // 64 MiB

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case int32:
		err := binaryserializer.PutUint32(w, uint32(e))
		if err != nil {
			return err
		}
		return nil

	case uint32:
		err := binaryserializer.PutUint32(w, e)
		if err != nil {
			return err
		}
		return nil

	case int64:
		err := binaryserializer.PutUint64(w, uint64(e))
		if err != nil {
			return err
		}
		return nil

	case uint64:
		err := binaryserializer.PutUint64(w, e)
		if err != nil {
			return err
		}
		return nil

	case uint16:
		err := binaryserializer.PutUint16(w, e)
		if err != nil {
			return err
		}
		return nil

	case uint8:
		err := binaryserializer.PutUint8(w, e)
		if err != nil {
			return err
		}
		return nil

	case bool:
		var err error
		if e {
			err = binaryserializer.PutUint8(w, 0x01)
		} else {
			err = binaryserializer.PutUint8(w, 0x00)
		}
		if err != nil {
			return err
		}
		return nil

	case float64:
		// IEEE-754 bit pattern, little endian. Canonical as long as the
		// value is not a NaN, which the domain types never carry.
		err := binaryserializer.PutUint64(w, math.Float64bits(e))
		if err != nil {
			return err
		}
		return nil

	case externalapi.DomainHash:
		_, err := w.Write(e.ByteSlice())
		if err != nil {
			return errors.WithStack(err)
		}
		return nil

	case *externalapi.DomainHash:
		_, err := w.Write(e.ByteSlice())
		if err != nil {
			return errors.WithStack(err)
		}
		return nil

	case *externalapi.ArtefactID:
		_, err := w.Write(e.ByteSlice())
		if err != nil {
			return errors.WithStack(err)
		}
		return nil

	case *externalapi.AccountID:
		_, err := w.Write(e.ByteSlice())
		if err != nil {
			return errors.WithStack(err)
		}
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	// Attempt to read the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case *int32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = int32(rv)
		return nil

	case *uint32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *int64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = int64(rv)
		return nil

	case *uint64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *uint16:
		rv, err := binaryserializer.Uint16(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *uint8:
		rv, err := binaryserializer.Uint8(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *bool:
		rv, err := binaryserializer.Uint8(r)
		if err != nil {
			return err
		}
		if rv != 0x00 && rv != 0x01 {
			return errors.Wrapf(errMalformed, "in order to keep serialization canonical, true has to "+
				"always be 0x01")
		}
		*e = rv == 0x01
		return nil

	case *float64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = math.Float64frombits(rv)
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteVarBytes writes a length-prefixed byte slice to w.
func WriteVarBytes(w io.Writer, data []byte) error {
	err := binaryserializer.PutUint64(w, uint64(len(data)))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.WithStack(err)
}

// ReadVarBytes reads a length-prefixed byte slice from r.
func ReadVarBytes(r io.Reader) ([]byte, error) {
	length, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}
	if length > maxVarBytesLength {
		return nil, errors.Wrapf(errMalformed, "variable length field is %d bytes, "+
			"while the maximum allowed is %d", length, maxVarBytesLength)
	}
	data := make([]byte, length)
	_, err = io.ReadFull(r, data)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// WriteVarString writes a length-prefixed string to w.
func WriteVarString(w io.Writer, s string) error {
	return WriteVarBytes(w, []byte(s))
}

// ReadVarString reads a length-prefixed string from r.
func ReadVarString(r io.Reader) (string, error) {
	data, err := ReadVarBytes(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadDomainHash reads a DomainHash from r.
func ReadDomainHash(r io.Reader) (*externalapi.DomainHash, error) {
	var hashBytes [externalapi.DomainHashSize]byte
	_, err := io.ReadFull(r, hashBytes[:])
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return externalapi.NewDomainHashFromByteArray(&hashBytes), nil
}
