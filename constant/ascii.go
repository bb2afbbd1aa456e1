package constant

// AsciiArtLogo is the application's ASCII art banner shown on the root help screen.
const AsciiArtLogo = `
    ____ _             __  _
   / __/(_)____  ___  / /_(_)____
  / /_ / // __ \/ _ \/ __/ // ___/
 / __// // / / /  __/ /_/ // /__
/_/  /_//_/ /_/\___/\__/_/ \___/
`
