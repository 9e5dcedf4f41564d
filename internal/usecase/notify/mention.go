package notify

import (
	"fmt"

	"postwatch/internal/domain/entity"
)

// MentionKind selects which principal, if any, a message is allowed to ping.
type MentionKind int

const (
	MentionNone MentionKind = iota
	MentionEveryone
	MentionRole
)

// Mention is the resolved ping policy for one outgoing message. The kind
// governs the allowed-mentions set on the Discord side; the greeting text in
// the message body is composed separately and stays the same even when the
// ping is suppressed.
type Mention struct {
	Kind   MentionKind
	RoleID string
}

// resolveMention applies the link's mention settings. Debug mode wins over
// everything, then the per-link opt-out, then the role override.
func resolveMention(link *entity.ChannelLink, debug bool) Mention {
	switch {
	case debug:
		return Mention{Kind: MentionNone}
	case !link.ShouldMention:
		return Mention{Kind: MentionNone}
	case link.RoleMentionID != nil && *link.RoleMentionID != "":
		return Mention{Kind: MentionRole, RoleID: *link.RoleMentionID}
	default:
		return Mention{Kind: MentionEveryone}
	}
}

// mentionText renders the greeting target. The text always names the
// configured audience so a suppressed message still reads the same.
func mentionText(link *entity.ChannelLink) string {
	if link.RoleMentionID != nil && *link.RoleMentionID != "" {
		return fmt.Sprintf("<@&%s>", *link.RoleMentionID)
	}
	return "@everyone"
}
