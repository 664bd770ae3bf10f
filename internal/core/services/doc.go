// Package services implements the driving port interfaces.
// Services contain the editor's business logic: connector geometry,
// connector interaction, multi-floor composition, path assembly and
// display selection. They reach storage and the user only through
// driven ports.
package services
