package model

// RsvpPayload is passed through to rsvp_guests verbatim: each key is a column.
type RsvpPayload map[string]any

// RsvpGuest is the stored row as the database returned it.
type RsvpGuest map[string]any
