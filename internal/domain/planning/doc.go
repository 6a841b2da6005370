// Package planning holds the event-planning resources a user manages:
// events, their budget items and guests, and the user's vendor address book.
//
// Events and vendors are owned directly by a user. Budget items and guests
// are owned through their parent event, so every repository accessor takes
// the caller's user ID and never returns rows outside that ownership chain.
package planning
