// Package logger provides leveled, colored logging for iot-cache commands.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two persistent flags on the root
// command:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows everything, including debug and error details
//
// Without flags, only user-facing warnings are shown; failures reach the
// user through the command's final message instead.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfUser()       // Always shown
//	Logger.Errorf()          // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Writing key %s to %s", key, store)
package logger
