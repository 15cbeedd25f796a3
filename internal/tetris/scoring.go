package tetris

// lineScores is the base award for clearing n rows at once, before the
// level multiplier.
var lineScores = [5]int{0, 40, 100, 300, 1200}

// attackLines is the garbage sent for clearing n rows at once.
var attackLines = [5]int{0, 0, 1, 2, 4}

// LineScore returns the points for clearing n rows in one lock at level.
func LineScore(n, level int) int {
	if n <= 0 {
		return 0
	}
	if n > 4 {
		n = 4
	}
	return lineScores[n] * level
}

// AttackFor returns the garbage rows sent for clearing n rows in one lock.
func AttackFor(n int) int {
	if n <= 0 {
		return 0
	}
	if n > 4 {
		n = 4
	}
	return attackLines[n]
}
