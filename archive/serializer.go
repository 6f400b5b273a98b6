package archive

// Serializer bundles the Writer, ScratchAllocator, and SharingPool that a
// single archive-build operation needs, and owns them exclusively: a
// Serializer is not safe for concurrent use from multiple goroutines, the
// same contract the teacher documents for hive/builder.Builder ("use one
// builder per goroutine").
type Serializer struct {
	Config    Config
	Writer    Writer
	Scratch   *ScratchAllocator
	Sharing   *SharingPool
	finished  bool
}

// NewSerializer returns a Serializer over a fresh BufferWriter sized to
// hint bytes.
func NewSerializer(cfg Config, hint int) *Serializer {
	return &Serializer{
		Config:  cfg,
		Writer:  NewBufferWriter(hint),
		Scratch: NewScratchAllocator(),
		Sharing: NewSharingPool(),
	}
}

// Finish marks the serializer as done and returns the final archive
// bytes. Calling any further method on the Serializer after Finish is a
// programming error.
func (s *Serializer) Finish() ([]byte, error) {
	if s.finished {
		return nil, ErrSerializerClosed
	}
	s.finished = true
	return s.Writer.Bytes(), nil
}

// WriteAligned pads the writer to align, then writes b, returning the
// aligned position b was written at.
func (s *Serializer) WriteAligned(b []byte, align int) (int64, error) {
	if err := AlignTo(s.Writer, align); err != nil {
		return 0, err
	}
	return s.Writer.WriteBytes(b)
}
