// Package workbook implements spec.md §6's out-of-core Excel-compatible
// workbook emission/ingestion, via github.com/xuri/excelize/v2. Grounded
// on the original Rust write_excel_file.rs/read_excel_file.rs behavior
// description carried into SPEC_FULL.md supplement #4.
package workbook

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"strconv"

	"coursesched/internal/catalog"
	"coursesched/internal/schedule"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	scheduleSheet  = "Schedule"
	internalsSheet = "Internals"

	saveFileMajor = 1
	saveFileMinor = 0
	saveFilePatch = 0

	magic = "CSCHEDv1"
)

// SaveFileVersion is spec.md §6's `SAVEFILE_VERSION = major·10^6 +
// minor·10^3 + patch`.
func SaveFileVersion() uint32 {
	return saveFileMajor*1_000_000 + saveFileMinor*1_000 + saveFilePatch
}

// ErrSerializationVersion is returned (wrapped) when a loaded blob's
// version exceeds this reader's SaveFileVersion — spec.md §7's
// SerializationVersion error kind.
var ErrSerializationVersion = errors.New("persisted schedule version exceeds reader version")

func init() {
	gob.Register(catalog.CourseReq{})
	gob.Register(catalog.GenEdReq{})
}

// TEMPLATE_PNG: a minimal valid 1x1 transparent PNG, used as the fixed
// header spec.md §6 calls TEMPLATE_PNG. The persisted Schedule blob is
// appended after it so the Internals sheet still opens as a (trivial)
// image in any viewer.
var templatePNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// gobSchedule is the exact shape persisted: it mirrors schedule.Schedule
// field-for-field. It exists as its own type only so gob's wire schema is
// stable independent of any future unexported additions to
// schedule.Schedule.
type gobSchedule struct {
	Courses  []catalog.Semester
	Programs []string
	Incoming catalog.Semester
	Catalog  catalog.Catalog
}

func toGob(s schedule.Schedule) gobSchedule {
	return gobSchedule{Courses: s.Courses, Programs: s.Programs, Incoming: s.Incoming, Catalog: s.Catalog}
}

func fromGob(g gobSchedule) schedule.Schedule {
	return schedule.Schedule{Courses: g.Courses, Programs: g.Programs, Incoming: g.Incoming, Catalog: g.Catalog}
}

// encodeBlob builds the versioned envelope: magic bytes, a uint32
// SAVEFILE_VERSION, then a gob-encoded Schedule.
func encodeBlob(s schedule.Schedule) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(magic)
	if err := binary.Write(&buf, binary.BigEndian, SaveFileVersion()); err != nil {
		return nil, errors.Wrap(err, "workbook: write version header")
	}
	if err := gob.NewEncoder(&buf).Encode(toGob(s)); err != nil {
		return nil, errors.Wrap(err, "workbook: gob-encode schedule")
	}
	return buf.Bytes(), nil
}

// decodeBlob reverses encodeBlob, returning ErrSerializationVersion if the
// embedded version exceeds this reader's.
func decodeBlob(blob []byte) (schedule.Schedule, error) {
	if len(blob) < len(magic)+4 || string(blob[:len(magic)]) != magic {
		return schedule.Schedule{}, errors.New("workbook: not a recognized save blob")
	}
	rest := blob[len(magic):]
	version := binary.BigEndian.Uint32(rest[:4])
	if version > SaveFileVersion() {
		return schedule.Schedule{}, errors.Wrapf(ErrSerializationVersion, "blob version %d > reader version %d", version, SaveFileVersion())
	}
	var g gobSchedule
	if err := gob.NewDecoder(bytes.NewReader(rest[4:])).Decode(&g); err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "workbook: gob-decode schedule")
	}
	return fromGob(g), nil
}

// Write renders s to an Excel-compatible workbook at path, with the
// visible protected Schedule grid sheet, a hidden protected Internals
// sheet carrying the PNG-tagged save blob, and one hidden sheet per
// declared program (spec.md §6).
func Write(path string, s schedule.Schedule) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeScheduleSheet(f, s); err != nil {
		return err
	}
	if err := writeInternalsSheet(f, s); err != nil {
		return err
	}
	for _, name := range s.Programs {
		if err := writeProgramSheet(f, name, s); err != nil {
			return err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		// excelize's default sheet may already be renamed away; ignore.
		_ = err
	}
	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "workbook: save")
	}
	return nil
}

func writeScheduleSheet(f *excelize.File, s schedule.Schedule) error {
	idx, err := f.NewSheet(scheduleSheet)
	if err != nil {
		return errors.Wrap(err, "workbook: create Schedule sheet")
	}
	f.SetActiveSheet(idx)

	for semIdx, sem := range s.Courses {
		colA := columnLetter(2 * semIdx)
		colB := columnLetter(2*semIdx + 1)
		header := fmt.Sprintf("%s1", colA)
		mergeEnd := fmt.Sprintf("%s1", colB)
		_ = f.SetCellValue(scheduleSheet, header, fmt.Sprintf("Semester %d", semIdx+1))
		_ = f.MergeCell(scheduleSheet, header, mergeEnd)

		for row, code := range sem {
			rec := s.Catalog.Courses[code]
			_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("%s%d", colA, row+2), code.String())
			_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("%s%d", colB, row+2), strconv.Itoa(rec.CreditsOrZero()))
		}
	}
	return f.ProtectSheet(scheduleSheet, &excelize.SheetProtectionOptions{})
}

func writeInternalsSheet(f *excelize.File, s schedule.Schedule) error {
	idx, err := f.NewSheet(internalsSheet)
	if err != nil {
		return errors.Wrap(err, "workbook: create Internals sheet")
	}
	f.SetActiveSheet(idx)

	blob, err := encodeBlob(s)
	if err != nil {
		return err
	}
	payload := append(append([]byte(nil), templatePNG...), blob...)

	if err := f.AddPictureFromBytes(internalsSheet, "A1", &excelize.Picture{
		Extension: ".png",
		File:      payload,
		Format:    &excelize.GraphicOptions{},
	}); err != nil {
		return errors.Wrap(err, "workbook: embed internals image")
	}
	if err := f.SetSheetVisible(internalsSheet, false); err != nil {
		return errors.Wrap(err, "workbook: hide Internals sheet")
	}
	return f.ProtectSheet(internalsSheet, &excelize.SheetProtectionOptions{})
}

func writeProgramSheet(f *excelize.File, program string, s schedule.Schedule) error {
	name := sheetNameFor(program)
	idx, err := f.NewSheet(name)
	if err != nil {
		return errors.Wrapf(err, "workbook: create %s sheet", name)
	}
	f.SetActiveSheet(idx)
	_ = f.SetCellValue(name, "A1", "Program")
	_ = f.SetCellValue(name, "B1", "Semester")
	_ = f.SetCellValue(name, "C1", "Course")

	prog, ok := s.Catalog.ProgramByName(program)
	if !ok {
		return f.SetSheetVisible(name, false)
	}
	row := 2
	for semIdx, sem := range prog.Semesters {
		for _, code := range sem {
			_ = f.SetCellValue(name, fmt.Sprintf("A%d", row), prog.Name)
			_ = f.SetCellValue(name, fmt.Sprintf("B%d", row), semIdx+1)
			_ = f.SetCellValue(name, fmt.Sprintf("C%d", row), code.String())
			row++
		}
	}
	return f.SetSheetVisible(name, false)
}

func sheetNameFor(program string) string {
	if len(program) > 28 {
		program = program[:28]
	}
	return "Prog_" + program
}

func columnLetter(idx int) string {
	name, err := excelize.ColumnNumberToName(idx + 1)
	if err != nil {
		return "A"
	}
	return name
}

// Read ingests a workbook written by Write (or any workbook following the
// same sheet conventions): the Schedule sheet is skipped as cover art, the
// Internals sheet (if present) is decoded back into a schedule.Schedule,
// and every other sheet is decoded as a table keyed by its first row.
func Read(path string) (schedule.Schedule, map[string][]map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return schedule.Schedule{}, nil, errors.Wrap(err, "workbook: open")
	}
	defer f.Close()

	var sched schedule.Schedule
	tables := make(map[string][]map[string]string)

	for _, name := range f.GetSheetList() {
		if name == scheduleSheet {
			continue
		}
		if name == internalsSheet {
			pics, err := f.GetPictures(internalsSheet, "A1")
			if err != nil || len(pics) == 0 {
				continue
			}
			blob := pics[0].File
			if len(blob) <= len(templatePNG) {
				continue
			}
			sched, err = decodeBlob(blob[len(templatePNG):])
			if err != nil {
				return schedule.Schedule{}, nil, err
			}
			continue
		}
		tables[name] = readTable(f, name)
	}
	return sched, tables, nil
}

func readTable(f *excelize.File, sheet string) []map[string]string {
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) == 0 {
		return nil
	}
	header := rows[0]
	var out []map[string]string
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}
