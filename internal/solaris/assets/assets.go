package assets

import _ "embed" // asset embedding

// GameMessagesYAML: the Solaris moderator message catalog.
//
//go:embed messages/game-messages.yml
var GameMessagesYAML string
