package framework

// Recorder counts the assertions made by one test case. successful never exceeds total, and
// neither ever decreases.
type Recorder struct {
	total      uint
	successful uint
}

// Record counts one assertion and returns condition unchanged, so callers can branch on it.
func (r *Recorder) Record(condition bool) bool {
	r.total++
	if condition {
		r.successful++
	}
	return condition
}

func (r *Recorder) Total() uint { return r.total }

func (r *Recorder) Successful() uint { return r.successful }

// Passed is true if every recorded assertion succeeded. A recorder with no assertions has passed.
func (r *Recorder) Passed() bool {
	return r.successful == r.total
}
