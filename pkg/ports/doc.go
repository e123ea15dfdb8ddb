/*
Package ports defines the driven ports (interfaces) for the WorldForge engine.

These interfaces decouple the conversion core from external implementations, allowing
the engine to work with various history backends, preset sources, and lock managers.

# Key Interfaces

  - Converter: The stateless conversion surface consumed by the HTTP and MCP adapters.
  - HistoryStore: Persists the bounded log of successful conversions.
  - PresetLoader: Resolves named parent transforms (e.g., from Loam or Memory).
  - DistributedLocker: Serializes history writes across multiple instances.
*/
package ports
