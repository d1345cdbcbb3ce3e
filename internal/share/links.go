// Package share builds the messages and deep links used to share a
// completed feasibility study.
package share

import (
	"fmt"
	"strings"
)

const (
	DefaultBrand   = "AlphaBeta Consulting"
	defaultProject = "mon projet"
)

// Links are ready-to-open share targets.
type Links struct {
	Message  string `json:"message"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
	SMS      string `json:"sms"`
}

type Builder struct {
	brand string
}

func NewBuilder(brand string) *Builder {
	if brand == "" {
		brand = DefaultBrand
	}
	return &Builder{brand: brand}
}

// Message is the sentence shared on every channel.
func (b *Builder) Message(businessName string) string {
	if strings.TrimSpace(businessName) == "" {
		businessName = defaultProject
	}
	return fmt.Sprintf("J'ai complété mon étude de faisabilité avec %s pour mon projet : %s", b.brand, businessName)
}

func (b *Builder) Subject() string {
	return "Mon étude de faisabilité - " + b.brand
}

// EmailBody is the message followed by an invitation and the page URL.
func (b *Builder) EmailBody(businessName, pageURL string) string {
	return fmt.Sprintf("%s\n\nConsultez %s pour lancer votre propre projet : %s", b.Message(businessName), b.brand, pageURL)
}

// ShortBody is used for chat and SMS.
func (b *Builder) ShortBody(businessName, pageURL string) string {
	return b.Message(businessName) + "\n\n" + pageURL
}

func (b *Builder) Links(businessName, pageURL string) Links {
	short := EncodeComponent(b.ShortBody(businessName, pageURL))
	return Links{
		Message: b.Message(businessName),
		Email: "mailto:?subject=" + EncodeComponent(b.Subject()) +
			"&body=" + EncodeComponent(b.EmailBody(businessName, pageURL)),
		WhatsApp: "https://wa.me/?text=" + short,
		SMS:      "sms:?&body=" + short,
	}
}

// EncodeComponent percent-encodes s as a URI component: every byte is
// escaped except letters, digits and -_.!~*'().
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
