package generator

import (
	"strings"

	"github.com/tristendillon/easyroutes/core/models"
)

// AbsolutePath joins node's segment onto the accumulated parent path. It
// returns the node's absolute route path and the accumulator its children
// should receive. The root marker "/" contributes nothing to the accumulator.
func AbsolutePath(parentPath string, node *models.RouteNode) (string, string) {
	fullPath := parentPath + node.Path
	if node.IsRoot() && parentPath == "" {
		fullPath = models.RootPath
	} else if !strings.HasPrefix(fullPath, "/") {
		fullPath = "/" + fullPath
	}

	increment := node.Path
	if node.IsRoot() {
		increment = ""
	}
	return fullPath, parentPath + increment + "/"
}

// TopLevelLink is the navigation target for a node rendered outside any
// parent: "/" stays as is, anything else gets a single leading slash.
func TopLevelLink(node *models.RouteNode) string {
	if node.IsRoot() || strings.HasPrefix(node.Path, "/") {
		return node.Path
	}
	return "/" + node.Path
}
