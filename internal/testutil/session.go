package testutil

// RecordingSession is a session handle that remembers what login wrote to it
type RecordingSession struct {
	User  string
	Calls int
}

// SetAuthenticatedUser records the username
func (s *RecordingSession) SetAuthenticatedUser(username string) {
	s.User = username
	s.Calls++
}
