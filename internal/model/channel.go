package model

import (
	"slices"
	"time"
)

// Channel represents a named entity participating in follow and ban relations.
// Every list holds durable channel IDs, never usernames.
type Channel struct {
	ID             string    `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	FollowerList   []string  `json:"follower_list" db:"follower_list"`
	FollowedList   []string  `json:"followed_list" db:"followed_list"`
	BannedList     []string  `json:"banned_list" db:"banned_list"`
	BannedFromList []string  `json:"banned_from_list" db:"banned_from_list"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// NewChannel returns a channel that has not been created yet (no ID)
func NewChannel(username string) *Channel {
	return &Channel{
		Username:       username,
		FollowerList:   []string{},
		FollowedList:   []string{},
		BannedList:     []string{},
		BannedFromList: []string{},
	}
}

// Clone returns a deep copy of the channel
func (c *Channel) Clone() *Channel {
	if c == nil {
		return nil
	}
	clone := *c
	clone.FollowerList = cloneList(c.FollowerList)
	clone.FollowedList = cloneList(c.FollowedList)
	clone.BannedList = cloneList(c.BannedList)
	clone.BannedFromList = cloneList(c.BannedFromList)
	return &clone
}

// Normalize replaces nil lists with empty ones so they serialize as []
func (c *Channel) Normalize() {
	if c.FollowerList == nil {
		c.FollowerList = []string{}
	}
	if c.FollowedList == nil {
		c.FollowedList = []string{}
	}
	if c.BannedList == nil {
		c.BannedList = []string{}
	}
	if c.BannedFromList == nil {
		c.BannedFromList = []string{}
	}
}

// List returns a pointer to the named list so callers can mutate it in place
func (c *Channel) List(kind ListKind) *[]string {
	switch kind {
	case FollowerList:
		return &c.FollowerList
	case FollowedList:
		return &c.FollowedList
	case BannedList:
		return &c.BannedList
	case BannedFromList:
		return &c.BannedFromList
	}
	return nil
}

func cloneList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return slices.Clone(list)
}
