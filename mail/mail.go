// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"fmt"
	"mime"
	stdmail "net/mail"
	"strings"
	"unicode/utf8"

	"github.com/emersion/go-message/charset"
)

// HeaderInfos returns the decoded subject and the Message-Id of a raw mail. Both are empty if
// the header is missing.
func HeaderInfos(rawMail []byte) (string, string, error) {
	msg, err := stdmail.ReadMessage(bytes.NewReader(rawMail))
	if err != nil {
		return "", "", fmt.Errorf("could not parse mail: %w", err)
	}

	dec := &mime.WordDecoder{
		CharsetReader: charset.Reader,
	}
	subject, err := dec.DecodeHeader(msg.Header.Get("Subject"))
	if err != nil {
		return "", "", fmt.Errorf("could decode subject header: %w", err)
	}

	messageId := strings.Trim(strings.TrimSpace(msg.Header.Get("Message-Id")), "<>")

	return subject, messageId, nil
}

func ShortSubject(subject string) string {
	if utf8.RuneCountInString(subject) > 30 {
		subject = string([]rune(subject)[:30]) + "..."
	}
	return subject
}
