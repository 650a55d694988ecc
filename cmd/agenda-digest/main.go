// Command agenda-digest publishes the coming week's local events as one post.
package main

import "github.com/bdxtown/agenda-digest/internal/cli"

func main() {
	cli.Execute()
}
