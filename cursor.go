package paging

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const offsetCursorPrefix = "cursor:offset:"

// EncodeOffsetCursor takes an integer and encodes to a base64 string as "cursor:offset:NUMBER"
func EncodeOffsetCursor(offset int) *string {
	data := offsetCursorPrefix + strconv.Itoa(offset)
	encoded := base64.URLEncoding.EncodeToString([]byte(data))
	return &encoded
}

// DecodeOffsetCursor takes a base64 string and decodes it to extract the
// offset from a string based on "cursor:offset:NUMBER". It defaults to 0 if it
// cannot decode, has any error, or the offset is negative.
func DecodeOffsetCursor(input *string) int {
	if input == nil {
		return 0
	}

	decoded, err := base64.URLEncoding.DecodeString(*input)
	if err != nil {
		return 0
	}

	raw, ok := strings.CutPrefix(string(decoded), offsetCursorPrefix)
	if !ok {
		return 0
	}

	offset, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || offset < 0 {
		return 0
	}

	return int(offset)
}
