package errors

// Sub returns an error containing root as its root and
// taking all other metadata (detail, message, and data items)
// from err.
//
// Sub returns nil when err is nil.
//
// Use this when you need to substitute a new root error in place
// of an existing error that may already hold metadata.
func Sub(root, err error) error {
	if err == nil {
		return nil
	}
	if wrapper, ok := err.(wrapperError); ok && root != nil {
		wrapper.root = Root(root)
		wrapper.msg = root.Error() + ": " + wrapper.msg
		return wrapper
	}
	return Wrap(root, err.Error())
}
