// Package artwork fetches album art and draws it in the terminal.
//
// A Fetcher downloads an image over HTTP on a detached goroutine and delivers
// the decoded result on a channel; the event loop owns the receiving end and
// is the only code that touches application state. Fetches are rate limited
// and every fetch is logged with a fetch_id so overlapping requests can be
// told apart in the log file.
//
// A Picker encodes an image as half-block cells ("▀") colored for the
// terminal's profile:
//
//	picker := artwork.DetectPicker() // nil on terminals without color
//	if picker != nil {
//		fmt.Println(picker.Render(img, 40, 20))
//	}
package artwork
