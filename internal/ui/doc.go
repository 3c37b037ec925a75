// Package ui provides semantic text formatting for iot-cache output.
//
// Formatters colorize content by kind (commands, store paths, key names,
// status marks). When NO_COLOR is set or the terminal cannot show color,
// text decorations are used instead so the meaning survives:
//   - Code: `backticks`
//   - Key: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration
//
// Final command messages are built from the mark helpers:
//
//	ui.Done("Key store created: " + ui.Path.Sprint(path))
//	ui.Failed("Invalid key store file") + "\n" + ui.Hint("Run " + ui.Code.Sprint("iot-cache store-list"))
package ui
