package comments

// Composer tracks which comment, if any, is being replied to or edited.
// One shared draft buffer backs both modes, so at most one comment can be
// in "replying" state and at most one in "editing" state; switching targets
// implicitly cancels the previous one.
type Composer struct {
	replyTo *int
	editing *int
	draft   string
}

// StartReply targets a comment for a reply with an empty draft. Any
// in-progress edit is cancelled.
func (c *Composer) StartReply(commentID int) {
	c.editing = nil
	id := commentID
	c.replyTo = &id
	c.draft = ""
}

// StartEdit targets a comment for editing, seeding the draft with its
// current content. Any in-progress reply is cancelled.
func (c *Composer) StartEdit(commentID int, current string) {
	c.replyTo = nil
	id := commentID
	c.editing = &id
	c.draft = current
}

// Cancel clears both targets and the draft.
func (c *Composer) Cancel() {
	c.replyTo = nil
	c.editing = nil
	c.draft = ""
}

func (c *Composer) SetDraft(s string) { c.draft = s }
func (c *Composer) Draft() string     { return c.draft }

// ReplyingTo reports the reply target, if any.
func (c *Composer) ReplyingTo() (int, bool) {
	if c.replyTo == nil {
		return 0, false
	}
	return *c.replyTo, true
}

// Editing reports the edit target, if any.
func (c *Composer) Editing() (int, bool) {
	if c.editing == nil {
		return 0, false
	}
	return *c.editing, true
}
