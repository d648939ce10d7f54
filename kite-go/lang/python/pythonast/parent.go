package pythonast

// CountNodes counts the number of nodes in an AST
func CountNodes(node Node) int {
	var count int
	InspectEdges(node, func(parent, child Node, field string) bool {
		if !IsNil(child) {
			count++
		}
		return true
	})
	return count
}
