package document

import "github.com/sirupsen/logrus"

// DefaultApplication is written to the envelope when WithApplication is not
// used.
const DefaultApplication = "Pohoda Go connector"

// Version is the dataPack format version.
const Version = "2.0"

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithApplication sets the application attribute of the envelope.
func WithApplication(name string) WriterOption {
	return func(w *Writer) {
		if name != "" {
			w.application = name
		}
	}
}

// WithWriterLogger routes writer logs to log.
func WithWriterLogger(log *logrus.Entry) WriterOption {
	return func(w *Writer) {
		if log != nil {
			w.log = log
		}
	}
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithReaderLogger routes reader logs to log.
func WithReaderLogger(log *logrus.Entry) ReaderOption {
	return func(r *Reader) {
		if log != nil {
			r.log = log
		}
	}
}
