package wire

import "unicode/utf8"

// verification helpers for the various fields in a 9P message.

func validMsgType(t uint8) bool {
	return int(t) < len(msgParseLUT) && (msgParseLUT[t] != nil || t == msgTwrite || t == msgRread)
}

// verifySizeAndType checks that a message is as big (or small) as it
// needs to be, given what is known about its type.
func verifySizeAndType(m msg) error {
	t, n := m.Type(), m.Len()
	if !validMsgType(t) {
		return errInvalidMsgType
	}
	if min := int64(minSizeLUT[t]); n < min {
		return errTooSmall
	} else if fixedSize(t) && n > min {
		return errTooBig
	}
	return nil
}

// verifyString checks that data is a valid UTF-8 sequence.
func verifyString(data []byte) error {
	if !utf8.Valid(data) {
		return errInvalidUTF8
	}
	return nil
}

// verifyPathElem checks that data is a valid path element: a valid
// UTF-8 sequence containing no '/' character.
func verifyPathElem(data []byte) error {
	for _, v := range data {
		if v == '/' {
			return errContainsSlash
		}
	}
	return verifyString(data)
}

// verifyField reads the first length-prefixed field out of data,
// returning the field and the remainder. If fill is true, the field
// (plus its 2-byte length) is expected to fill data, minus padding.
func verifyField(data []byte, fill bool, padding int) ([]byte, []byte, error) {
	if len(data) < 2 {
		return nil, nil, errOverSize
	}
	size := int(guint16(data[:2]))
	if size+2 > len(data)-padding {
		return nil, nil, errOverSize
	} else if fill && size+2 < len(data)-padding {
		return nil, nil, errUnderSize
	}
	field := data[2:]
	return field[:size], field[size:], nil
}
