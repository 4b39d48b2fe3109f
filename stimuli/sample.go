package stimuli

import "math/rand"

// Sample returns min(n, len(t.Rows)) rows drawn without replacement from a
// PRNG seeded with seed. The draw is the k-prefix of a Fisher-Yates shuffle,
// so equal tables and seeds always yield the same rows in the same order;
// the shuffle algorithm is part of the tool's observable contract. Note that
// n >= len(t.Rows) still returns the rows shuffled. n <= 0 disables sampling
// and returns t unchanged.
func Sample(t Table, n int, seed int64) Table {
	if n <= 0 {
		return t
	}
	k := n
	if k > len(t.Rows) {
		k = len(t.Rows)
	}

	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)

	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})
	return Table{Columns: t.Columns, Rows: rows[:k]}
}
