// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"io"
	"strconv"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/utf7"
)

// fieldString normalises an atom, string, literal or number of a response to its textual form.
// Gmail sends X-GM-THRID and X-GM-MSGID as 64 bit numbers, labels with quotes or non ASCII
// characters may arrive as literals.
func fieldString(f interface{}) (string, error) {
	switch v := f.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case imap.RawString:
		return string(v), nil
	case imap.Literal:
		b, err := io.ReadAll(v)
		if err != nil {
			return "", fmt.Errorf("could not read literal: %w", err)
		}
		return string(b), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	}

	return "", fmt.Errorf("unexpected field type %T", f)
}

func fieldUint64(f interface{}) (uint64, error) {
	s, err := fieldString(f)
	if err != nil {
		return 0, err
	}

	return strconv.ParseUint(s, 10, 64)
}

// labels decodes the X-GM-LABELS list, label names are sent as modified UTF-7.
func labels(f interface{}) ([]string, error) {
	if f == nil {
		return []string{}, nil
	}

	list, ok := f.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list of labels, got %T", f)
	}

	decoder := utf7.Encoding.NewDecoder()
	result := make([]string, 0, len(list))
	for _, l := range list {
		s, err := fieldString(l)
		if err != nil {
			return nil, err
		}

		decoded, err := decoder.String(s)
		if err != nil {
			return nil, fmt.Errorf("could not decode label %q: %w", s, err)
		}
		result = append(result, decoded)
	}

	return result, nil
}
