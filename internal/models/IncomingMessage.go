package models

type IncomingMessage struct {
	ID         string
	ChannelID  string
	AuthorID   string
	AuthorName string
	Content    string
	FromBot    bool
}

type MemberJoin struct {
	UserID   string
	Username string
}
