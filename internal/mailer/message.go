package mailer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
)

// Default resume attachment metadata; every message in a batch carries the
// same attachment under the same name.
const (
	AttachmentFilename = "Resume.pdf"
	AttachmentMIMEType = "application/pdf"
)

// Attachment is a binary file attached to every outgoing message.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

func (a Attachment) withDefaults() Attachment {
	if a.Filename == "" {
		a.Filename = AttachmentFilename
	}
	if a.MIMEType == "" {
		a.MIMEType = AttachmentMIMEType
	}
	return a
}

// composeMessage renders one outreach message: greeting by first name
// (falling back to "there"), intro, closing and subject with the company
// substituted, and the attachment bound as a binary part.
func composeMessage(from, to, firstName, company string, t Templates, att Attachment) ([]byte, error) {
	att = att.withDefaults()

	greetName := firstName
	if greetName == "" {
		greetName = "there"
	}
	body := fmt.Sprintf(
		"Hello %s,\n\n%s\n\n%s",
		greetName,
		substituteCompany(strings.TrimSpace(t.Intro), company),
		substituteCompany(strings.TrimSpace(t.Closing), company),
	)

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: from}})
	h.SetAddressList("Reply-To", []*mail.Address{{Address: from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(substituteCompany(t.Subject, company))

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create message writer: %w", err)
	}

	var th mail.InlineHeader
	th.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	tw, err := mw.CreateSingleInline(th)
	if err != nil {
		return nil, fmt.Errorf("create text part: %w", err)
	}
	if _, err := io.WriteString(tw, body); err != nil {
		return nil, fmt.Errorf("write text part: %w", err)
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}

	var ah mail.AttachmentHeader
	ah.SetFilename(att.Filename)
	ah.SetContentType(att.MIMEType, nil)
	aw, err := mw.CreateAttachment(ah)
	if err != nil {
		return nil, fmt.Errorf("create attachment part: %w", err)
	}
	if _, err := aw.Write(att.Data); err != nil {
		return nil, fmt.Errorf("write attachment: %w", err)
	}
	if err := aw.Close(); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
