// Package generator renders templates and writes generated files.
//
// # Features
//
//   - Template rendering with caching and helper functions
//   - Validate-then-execute operations with dry-run and check modes
//   - Conflict resolution (overwrite, skip, diff, interactive)
//   - Unified diffs of generated content against the file on disk
//
// # Usage
//
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Path: "Core/TableTrigConstTest.cs", Content: content, Mode: 0644},
//	}
//	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{}); err != nil {
//	    return err
//	}
//
// Generated files are replaced wholesale. A write failure stops the run;
// files already written stay on disk.
package generator
