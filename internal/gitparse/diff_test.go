package gitparse

import "testing"

const sampleUnifiedDiff = `diff --git a/src/old.ts b/src/old.ts
deleted file mode 100644
index 1234567..0000000
--- a/src/old.ts
+++ /dev/null
@@ -1,2 +0,0 @@
-line one
-line two
diff --git a/src/new.ts b/src/new.ts
new file mode 100644
index 0000000..89abcde
--- /dev/null
+++ b/src/new.ts
@@ -0,0 +1,2 @@
+line one
+line two
diff --git a/src/a.ts b/src/b.ts
similarity index 100%
rename from src/a.ts
rename to src/b.ts
`

func TestParsePatchListFromUnifiedDiff(t *testing.T) {
	patches := ParsePatchListFromUnifiedDiff(sampleUnifiedDiff, "c1")
	if len(patches) != 3 {
		t.Fatalf("expected 3 patches, got %d: %+v", len(patches), patches)
	}
	if patches[0].PatchType != "D" || patches[0].OldFile != "src/old.ts" {
		t.Fatalf("unexpected deleted patch: %+v", patches[0])
	}
	if patches[1].PatchType != "A" || patches[1].NewFile != "src/new.ts" {
		t.Fatalf("unexpected added patch: %+v", patches[1])
	}
	if patches[2].PatchType != "R" || patches[2].OldFile != "src/a.ts" || patches[2].NewFile != "src/b.ts" {
		t.Fatalf("unexpected renamed patch: %+v", patches[2])
	}
}
