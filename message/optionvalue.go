package message

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	pkgMath "github.com/plgd-dev/go-libcoap/pkg/math"
)

// Option is a typed option of a message. The set of implementations is closed:
// there is one type per recognized option number and Other for everything else.
type Option interface {
	ID() OptionID
	isOption()
}

// Match is the predicate carried by If-Match: an empty Match matches any current
// representation, otherwise only the representation with the given entity tag.
type Match struct {
	ETag []byte
}

// MatchAny returns the empty predicate.
func MatchAny() Match {
	return Match{}
}

// MatchETag returns the predicate matching the entity tag.
func MatchETag(tag []byte) Match {
	return Match{ETag: tag}
}

// IsAny reports whether m is the empty predicate.
func (m Match) IsAny() bool {
	return len(m.ETag) == 0
}

type (
	IfMatchOption       struct{ Match Match }
	URIHostOption       string
	ETagOption          []byte
	IfNoneMatchOption   struct{}
	ObserveOption       uint32
	URIPortOption       uint16
	LocationPathOption  string
	OSCOREOption        []byte
	URIPathOption       string
	ContentFormatOption MediaType
	MaxAgeOption        uint32
	URIQueryOption      string
	HopLimitOption      uint8
	AcceptOption        MediaType
	QBlock1Option       uint32
	LocationQueryOption string
	Block2Option        uint32
	Block1Option        uint32
	Size2Option         uint32
	QBlock2Option       uint32
	ProxyURIOption      string
	ProxySchemeOption   string
	Size1Option         uint32
	EchoOption          []byte
	NoResponseOption    uint8
	RequestTagOption    []byte
)

// Other carries an option whose number is not recognized. The value is kept verbatim.
type Other struct {
	Number OptionID
	Value  []byte
}

func (IfMatchOption) ID() OptionID       { return IfMatch }
func (URIHostOption) ID() OptionID       { return URIHost }
func (ETagOption) ID() OptionID          { return ETag }
func (IfNoneMatchOption) ID() OptionID   { return IfNoneMatch }
func (ObserveOption) ID() OptionID       { return Observe }
func (URIPortOption) ID() OptionID       { return URIPort }
func (LocationPathOption) ID() OptionID  { return LocationPath }
func (OSCOREOption) ID() OptionID        { return OSCORE }
func (URIPathOption) ID() OptionID       { return URIPath }
func (ContentFormatOption) ID() OptionID { return ContentFormat }
func (MaxAgeOption) ID() OptionID        { return MaxAge }
func (URIQueryOption) ID() OptionID      { return URIQuery }
func (HopLimitOption) ID() OptionID      { return HopLimit }
func (AcceptOption) ID() OptionID        { return Accept }
func (QBlock1Option) ID() OptionID       { return QBlock1 }
func (LocationQueryOption) ID() OptionID { return LocationQuery }
func (Block2Option) ID() OptionID        { return Block2 }
func (Block1Option) ID() OptionID        { return Block1 }
func (Size2Option) ID() OptionID         { return Size2 }
func (QBlock2Option) ID() OptionID       { return QBlock2 }
func (ProxyURIOption) ID() OptionID      { return ProxyURI }
func (ProxySchemeOption) ID() OptionID   { return ProxyScheme }
func (Size1Option) ID() OptionID         { return Size1 }
func (EchoOption) ID() OptionID          { return Echo }
func (NoResponseOption) ID() OptionID    { return NoResponse }
func (RequestTagOption) ID() OptionID    { return RequestTag }
func (o Other) ID() OptionID             { return o.Number }

func (IfMatchOption) isOption()       {}
func (URIHostOption) isOption()       {}
func (ETagOption) isOption()          {}
func (IfNoneMatchOption) isOption()   {}
func (ObserveOption) isOption()       {}
func (URIPortOption) isOption()       {}
func (LocationPathOption) isOption()  {}
func (OSCOREOption) isOption()        {}
func (URIPathOption) isOption()       {}
func (ContentFormatOption) isOption() {}
func (MaxAgeOption) isOption()        {}
func (URIQueryOption) isOption()      {}
func (HopLimitOption) isOption()      {}
func (AcceptOption) isOption()        {}
func (QBlock1Option) isOption()       {}
func (LocationQueryOption) isOption() {}
func (Block2Option) isOption()        {}
func (Block1Option) isOption()        {}
func (Size2Option) isOption()         {}
func (QBlock2Option) isOption()       {}
func (ProxyURIOption) isOption()      {}
func (ProxySchemeOption) isOption()   {}
func (Size1Option) isOption()         {}
func (EchoOption) isOption()          {}
func (NoResponseOption) isOption()    {}
func (RequestTagOption) isOption()    {}
func (Other) isOption()               {}

func decodeString(id OptionID, value []byte) (string, error) {
	if !utf8.Valid(value) {
		return "", fmt.Errorf("%v: %w", id, ErrInvalidEncoding)
	}
	return string(value), nil
}

func decodeUint8(id OptionID, value []byte) (uint8, error) {
	v, err := pkgMath.SafeCastTo[uint8](DecodeUint16(value))
	if err != nil {
		return 0, fmt.Errorf("%v: %w: %v", id, ErrIllegalValue, err)
	}
	return v, nil
}

// DecodeOption interprets the raw value of option number. Recognized numbers are
// validated against OptionDefs and decoded into their typed variant, unrecognized
// numbers always decode into Other.
func DecodeOption(number OptionID, value []byte) (Option, error) {
	if _, ok := number.Def(); !ok {
		return Other{Number: number, Value: bytes.Clone(value)}, nil
	}
	if err := number.Validate(value); err != nil {
		return nil, err
	}
	switch number {
	case IfMatch:
		return IfMatchOption{Match: Match{ETag: bytes.Clone(value)}}, nil
	case URIHost:
		v, err := decodeString(number, value)
		return URIHostOption(v), err
	case ETag:
		return ETagOption(bytes.Clone(value)), nil
	case IfNoneMatch:
		return IfNoneMatchOption{}, nil
	case Observe:
		return ObserveOption(DecodeUint32(value)), nil
	case URIPort:
		return URIPortOption(DecodeUint16(value)), nil
	case LocationPath:
		v, err := decodeString(number, value)
		return LocationPathOption(v), err
	case OSCORE:
		return OSCOREOption(bytes.Clone(value)), nil
	case URIPath:
		v, err := decodeString(number, value)
		return URIPathOption(v), err
	case ContentFormat:
		return ContentFormatOption(DecodeUint16(value)), nil
	case MaxAge:
		return MaxAgeOption(DecodeUint32(value)), nil
	case URIQuery:
		v, err := decodeString(number, value)
		return URIQueryOption(v), err
	case HopLimit:
		v, err := decodeUint8(number, value)
		return HopLimitOption(v), err
	case Accept:
		return AcceptOption(DecodeUint16(value)), nil
	case QBlock1:
		return QBlock1Option(DecodeUint32(value)), nil
	case LocationQuery:
		v, err := decodeString(number, value)
		return LocationQueryOption(v), err
	case Block2:
		return Block2Option(DecodeUint32(value)), nil
	case Block1:
		return Block1Option(DecodeUint32(value)), nil
	case Size2:
		return Size2Option(DecodeUint32(value)), nil
	case QBlock2:
		return QBlock2Option(DecodeUint32(value)), nil
	case ProxyURI:
		v, err := decodeString(number, value)
		return ProxyURIOption(v), err
	case ProxyScheme:
		v, err := decodeString(number, value)
		return ProxySchemeOption(v), err
	case Size1:
		return Size1Option(DecodeUint32(value)), nil
	case Echo:
		return EchoOption(bytes.Clone(value)), nil
	case NoResponse:
		v, err := decodeUint8(number, value)
		return NoResponseOption(v), err
	case RequestTag:
		return RequestTagOption(bytes.Clone(value)), nil
	}
	return Other{Number: number, Value: bytes.Clone(value)}, nil
}

// EncodeOption returns the number and the raw value of o. The value length is
// checked against the same OptionDefs bounds used by DecodeOption.
func EncodeOption(o Option) (OptionID, []byte, error) {
	var value []byte
	switch v := o.(type) {
	case IfMatchOption:
		value = v.Match.ETag
	case URIHostOption:
		value = []byte(v)
	case ETagOption:
		value = v
	case IfNoneMatchOption:
	case ObserveOption:
		value = EncodeUint32(uint32(v))
	case URIPortOption:
		value = EncodeUint16(uint16(v))
	case LocationPathOption:
		value = []byte(v)
	case OSCOREOption:
		value = v
	case URIPathOption:
		value = []byte(v)
	case ContentFormatOption:
		value = EncodeUint16(uint16(v))
	case MaxAgeOption:
		value = EncodeUint32(uint32(v))
	case URIQueryOption:
		value = []byte(v)
	case HopLimitOption:
		// Hop-Limit is always exactly one byte long, 0 included.
		value = []byte{uint8(v)}
	case AcceptOption:
		value = EncodeUint16(uint16(v))
	case QBlock1Option:
		value = EncodeUint32(uint32(v))
	case LocationQueryOption:
		value = []byte(v)
	case Block2Option:
		value = EncodeUint32(uint32(v))
	case Block1Option:
		value = EncodeUint32(uint32(v))
	case Size2Option:
		value = EncodeUint32(uint32(v))
	case QBlock2Option:
		value = EncodeUint32(uint32(v))
	case ProxyURIOption:
		value = []byte(v)
	case ProxySchemeOption:
		value = []byte(v)
	case Size1Option:
		value = EncodeUint32(uint32(v))
	case EchoOption:
		value = v
	case NoResponseOption:
		value = EncodeUint8(uint8(v))
	case RequestTagOption:
		value = v
	case Other:
		value = v.Value
	default:
		return 0, nil, fmt.Errorf("option %T: %w", o, ErrIllegalValue)
	}
	id := o.ID()
	if err := id.Validate(value); err != nil {
		return id, nil, err
	}
	return id, value, nil
}
