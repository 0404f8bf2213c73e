package bot

import "math/rand/v2"

// demoLinks are well-known tracks shown when the user taps the demo button.
// Each one runs through the exact same link-recognition path as pasted input.
var demoLinks = []string{
	"https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
	"https://open.spotify.com/track/7GhIk7Il098yCjg4BQjzvb",
	"https://open.spotify.com/track/0VjIjW4GlUZAMYd2vXMi3b",
	"https://open.spotify.com/track/3n3Ppam7vgaVa1iaRUc9Lp",
	"https://open.spotify.com/track/60nZcImufyMA1MKQY3dcCH",
}

func randomDemoLink() string {
	return demoLinks[rand.IntN(len(demoLinks))]
}
