package transcripts

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/szymon-off/discord-html-transcripts/internal/dom"
)

// authorView is an author with every fallback resolved.
type authorView struct {
	id          string
	username    string
	displayName string
	avatarURL   string
	bot         bool
}

// resolveAuthor applies the placeholder and fallback rules. An absent author
// is the complete "Bot" placeholder; a present one must carry id and username.
func (r *Renderer) resolveAuthor(u *User) (authorView, error) {
	if u == nil {
		return authorView{
			id:          botPlaceholderName,
			username:    botPlaceholderName,
			displayName: botPlaceholderName,
			avatarURL:   r.cfg.botAvatarURL,
		}, nil
	}
	if u.ID == "" {
		return authorView{}, fmt.Errorf("%w: author id", ErrMissingRequiredField)
	}
	if u.Username == "" {
		return authorView{}, fmt.Errorf("%w: author username (id %s)", ErrMissingRequiredField, u.ID)
	}

	v := authorView{
		id:          u.ID,
		username:    u.Username,
		displayName: u.DisplayName,
		avatarURL:   u.AvatarURL,
		bot:         u.Bot,
	}
	if v.displayName == "" {
		v.displayName = u.Username
	}
	if v.avatarURL == "" {
		v.avatarURL = r.cfg.avatarURL
	}
	return v, nil
}

// buildMessageGroup builds the chatlog__message-group subtree for one message.
func (r *Renderer) buildMessageGroup(msg *Message) (*html.Node, error) {
	author, err := r.resolveAuthor(msg.Author)
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", msg.ID, err)
	}

	group := dom.Elem("div", "chatlog__message-group")

	if msg.ReferencedMessage != nil {
		symbol, reference, err := r.buildReference(msg.ReferencedMessage)
		if err != nil {
			return nil, fmt.Errorf("message %s: reply: %w", msg.ID, err)
		}
		dom.Append(group, symbol, reference)
	}

	avatar := dom.Elem("div", "chatlog__author-avatar-container")
	dom.Append(avatar, dom.Elem("img", "chatlog__author-avatar",
		"src", author.avatarURL,
		"alt", "Avatar",
		"loading", "lazy",
	))
	group.AppendChild(avatar)

	messages := dom.Elem("div", "chatlog__messages")
	name := dom.Elem("span", "chatlog__author-name",
		"title", author.displayName,
		"data-user-id", author.id,
	)
	dom.SetText(name, author.username)
	messages.AppendChild(name)

	if msg.Author != nil && author.bot {
		tag := dom.Elem("span", "chatlog__bot-tag")
		dom.SetText(tag, "BOT")
		messages.AppendChild(tag)
	}

	sent := r.formatTime(msg.CreatedAt)
	timestamp := dom.Elem("span", "chatlog__timestamp")
	dom.SetText(timestamp, sent)
	messages.AppendChild(timestamp)

	body := dom.Elem("div", "chatlog__message",
		"data-message-id", msg.ID,
		"id", "message-"+msg.ID,
		"title", "Message sent: "+sent,
	)

	if msg.Content != "" {
		content, err := r.buildContent(msg.Content)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", msg.ID, err)
		}
		body.AppendChild(content)
	}

	for i := range msg.Attachments {
		block, err := r.buildAttachment(&msg.Attachments[i])
		if err != nil {
			return nil, fmt.Errorf("message %s: attachment %d: %w", msg.ID, i, err)
		}
		body.AppendChild(block)
	}
	messages.AppendChild(body)

	for i := range msg.Embeds {
		block, err := r.buildEmbed(&msg.Embeds[i])
		if err != nil {
			return nil, fmt.Errorf("message %s: embed %d: %w", msg.ID, i, err)
		}
		messages.AppendChild(block)
	}

	group.AppendChild(messages)
	return group, nil
}

// buildReference renders the reply row: a connector symbol and the quoted
// author with a short content preview.
func (r *Renderer) buildReference(ref *Message) (*html.Node, *html.Node, error) {
	author, err := r.resolveAuthor(ref.Author)
	if err != nil {
		return nil, nil, err
	}

	symbol := dom.Elem("div", "chatlog__reference-symbol")
	reference := dom.Elem("div", "chatlog__reference")

	name := dom.Elem("span", "chatlog__reference-name", "title", author.displayName)
	dom.SetText(name, author.username)

	preview := dom.Elem("span", "chatlog__reference-content")
	if ref.ID != "" {
		link := dom.Elem("a", "", "href", "#message-"+ref.ID)
		if err := dom.SetInnerHTML(link, r.formatter.Format(referencePreview(ref.Content))); err != nil {
			return nil, nil, err
		}
		preview.AppendChild(link)
	} else if err := dom.SetInnerHTML(preview, r.formatter.Format(referencePreview(ref.Content))); err != nil {
		return nil, nil, err
	}

	dom.Append(reference, name, preview)
	return symbol, reference, nil
}

// referencePreview truncates raw text to referencePreviewLength runes,
// appending "..." when it was longer. Truncating before formatting keeps
// the markup well-formed.
func referencePreview(raw string) string {
	runes := []rune(raw)
	if len(runes) <= referencePreviewLength {
		return raw
	}
	return string(runes[:referencePreviewLength]) + referencePreviewSuffix
}

// buildContent wraps formatted text in the whitespace-preserving container.
func (r *Renderer) buildContent(raw string) (*html.Node, error) {
	span := dom.Elem("span", "preserve-whitespace")
	if err := dom.SetInnerHTML(span, r.formatter.Format(raw)); err != nil {
		return nil, err
	}

	markdown := dom.Elem("div", "markdown")
	markdown.AppendChild(span)

	content := dom.Elem("div", "chatlog__content")
	content.AppendChild(markdown)
	return content, nil
}
