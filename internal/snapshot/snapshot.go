// Package snapshot reads and writes the JSON form of a method body the
// ctrlflow CLI operates on between passes. Go pointer identity cannot cross
// a JSON boundary, so the wire format assigns every node a small integer id
// on write and resolves Goto/branch-target references by id on read,
// reconstructing exactly the identity-sharing the in-memory ast.Node graph
// relies on.
package snapshot

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is the wire format version this package produces and the
// version new compatibility checks are measured against. It follows
// semantic versioning: a reader accepts files of its own major version that
// are not newer than its SchemaVersion, and rejects a newer minor or patch
// as well as any other major.
const SchemaVersion = "1.0.0"

// CheckCompatible reports whether a snapshot produced at producerVersion
// can be read by this build. Same major version, producer not ahead, is
// the acceptance rule — mirroring a Hyrum's-law-safe default for a format
// that is still pre-1.0 upstream tooling but committed to inside this
// module.
func CheckCompatible(producerVersion string) error {
	reader, err := semver.NewVersion(SchemaVersion)
	if err != nil {
		return fmt.Errorf("internal: invalid schema version %q: %w", SchemaVersion, err)
	}

	producer, err := semver.NewVersion(producerVersion)
	if err != nil {
		return fmt.Errorf("snapshot: invalid producer version %q: %w", producerVersion, err)
	}

	if producer.Major() != reader.Major() {
		return fmt.Errorf("snapshot: schema major version mismatch: file is v%d, reader supports v%d",
			producer.Major(), reader.Major())
	}

	if producer.GreaterThan(reader) {
		return fmt.Errorf("snapshot: file schema version %s is newer than this reader's %s",
			producerVersion, SchemaVersion)
	}

	return nil
}
