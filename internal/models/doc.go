// Package models defines the core domain models for the camp manager.
//
// # Entities
//
//   - Edition: one occurrence of the recurring retreat
//   - Person: a participant or staff member registered to an edition
//   - Tribe: a named participant grouping, global across editions
//   - Sector: a named staff work area, global across editions
//   - Payment: a contribution from a person toward their edition's fee
//   - User: a login account
//   - Profile: maps a login account to a Role
//
// # Design Principles
//
//  1. **Flat relational rows**: entities reference each other by ID string,
//     never by pointer, mirroring the database schema.
//  2. **Integer cents**: every monetary amount is an int64 number of cents.
//     Fees and payments stay exact; no float accumulation anywhere.
//  3. **Date-only fields** (birth dates, edition dates, payment dates) use
//     time.Time truncated to the day and are stored as ISO-8601 date strings.
package models
