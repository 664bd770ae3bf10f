// Package prompt provides driven.Prompter implementations that do not
// need a full-screen UI.
//
//   - LinePrompter asks on a line-oriented stream such as a terminal or pipe
//   - ScriptedPrompter answers from preset values for batch commands and tests
package prompt
