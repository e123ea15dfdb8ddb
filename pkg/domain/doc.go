/*
Package domain contains the value types and error contract of the WorldForge
transform engine.

It is kept pure: no I/O, no logging, no global state. Every type is a value
and every operation returns a new value.

# Key Entities

  - Vector3: three decimal components with componentwise arithmetic.
  - Quaternion: a rotation built from Euler angles, with Normalize and Inverse.
  - Transform: a parent TRS transform (position, Euler degrees, scale).
  - ConversionRequest / ConversionResult: the input and output of a conversion.
  - HistoryEntry and Preset: records used by callers of the engine.
*/
package domain
