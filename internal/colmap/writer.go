package colmap

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FormatText and FormatBinary are the on-disk variants of the sparse-model
// schema. The tag doubles as the file extension.
const (
	FormatText   = ".txt"
	FormatBinary = ".bin"
)

// WriteModel persists a sparse model to dir in the requested format. Records
// are written in ascending id order so repeated exports of the same model are
// byte-identical. The points3D map may be empty; the files are still written
// so consumers always find the complete triplet.
func WriteModel(cameras map[int32]Camera, images map[int32]Image, points3D map[int64]Point3D, dir, format string) error {
	switch format {
	case FormatText:
		if err := writeCamerasText(cameras, filepath.Join(dir, "cameras.txt")); err != nil {
			return err
		}
		if err := writeImagesText(images, filepath.Join(dir, "images.txt")); err != nil {
			return err
		}
		return writePoints3DText(points3D, filepath.Join(dir, "points3D.txt"))
	case FormatBinary:
		if err := writeCamerasBinary(cameras, filepath.Join(dir, "cameras.bin")); err != nil {
			return err
		}
		if err := writeImagesBinary(images, filepath.Join(dir, "images.bin")); err != nil {
			return err
		}
		return writePoints3DBinary(points3D, filepath.Join(dir, "points3D.bin"))
	default:
		return fmt.Errorf("unsupported sparse-model format %q (want %q or %q)", format, FormatText, FormatBinary)
	}
}

func sortedCameraIDs(cameras map[int32]Camera) []int32 {
	ids := make([]int32, 0, len(cameras))
	for id := range cameras {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedImageIDs(images map[int32]Image) []int32 {
	ids := make([]int32, 0, len(images))
	for id := range images {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedPointIDs(points map[int64]Point3D) []int64 {
	ids := make([]int64, 0, len(points))
	for id := range points {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// fstr formats a float the shortest way that round-trips, matching the
// repr-style output of the reference text writers.
func fstr(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTextFile(path string, write func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

func writeCamerasText(cameras map[int32]Camera, path string) error {
	return writeTextFile(path, func(w *bufio.Writer) error {
		fmt.Fprintln(w, "# Camera list with one line of data per camera:")
		fmt.Fprintln(w, "#   CAMERA_ID, MODEL, WIDTH, HEIGHT, PARAMS[]")
		fmt.Fprintf(w, "# Number of cameras: %d\n", len(cameras))
		for _, id := range sortedCameraIDs(cameras) {
			cam := cameras[id]
			fields := []string{
				strconv.FormatInt(int64(cam.ID), 10),
				cam.Model.Name,
				strconv.FormatInt(cam.Width, 10),
				strconv.FormatInt(cam.Height, 10),
			}
			for _, p := range cam.Params {
				fields = append(fields, fstr(p))
			}
			fmt.Fprintln(w, strings.Join(fields, " "))
		}
		return nil
	})
}

func writeImagesText(images map[int32]Image, path string) error {
	return writeTextFile(path, func(w *bufio.Writer) error {
		observations := 0
		for _, img := range images {
			observations += len(img.Points2D)
		}
		mean := 0.0
		if len(images) > 0 {
			mean = float64(observations) / float64(len(images))
		}
		fmt.Fprintln(w, "# Image list with two lines of data per image:")
		fmt.Fprintln(w, "#   IMAGE_ID, QW, QX, QY, QZ, TX, TY, TZ, CAMERA_ID, NAME")
		fmt.Fprintln(w, "#   POINTS2D[] as (X, Y, POINT3D_ID)")
		fmt.Fprintf(w, "# Number of images: %d, mean observations per image: %s\n", len(images), fstr(mean))
		for _, id := range sortedImageIDs(images) {
			img := images[id]
			fields := []string{strconv.FormatInt(int64(img.ID), 10)}
			for _, q := range img.Qvec {
				fields = append(fields, fstr(q))
			}
			for _, t := range img.Tvec {
				fields = append(fields, fstr(t))
			}
			fields = append(fields, strconv.FormatInt(int64(img.CameraID), 10), img.Name)
			fmt.Fprintln(w, strings.Join(fields, " "))

			pts := make([]string, 0, 3*len(img.Points2D))
			for _, p := range img.Points2D {
				pts = append(pts, fstr(p.X), fstr(p.Y), strconv.FormatInt(p.Point3DID, 10))
			}
			fmt.Fprintln(w, strings.Join(pts, " "))
		}
		return nil
	})
}

func writePoints3DText(points map[int64]Point3D, path string) error {
	return writeTextFile(path, func(w *bufio.Writer) error {
		tracks := 0
		for _, p := range points {
			tracks += len(p.Track)
		}
		mean := 0.0
		if len(points) > 0 {
			mean = float64(tracks) / float64(len(points))
		}
		fmt.Fprintln(w, "# 3D point list with one line of data per point:")
		fmt.Fprintln(w, "#   POINT3D_ID, X, Y, Z, R, G, B, ERROR, TRACK[] as (IMAGE_ID, POINT2D_IDX)")
		fmt.Fprintf(w, "# Number of points: %d, mean track length: %s\n", len(points), fstr(mean))
		for _, id := range sortedPointIDs(points) {
			p := points[id]
			fields := []string{
				strconv.FormatInt(p.ID, 10),
				fstr(p.XYZ[0]), fstr(p.XYZ[1]), fstr(p.XYZ[2]),
				strconv.Itoa(int(p.RGB[0])), strconv.Itoa(int(p.RGB[1])), strconv.Itoa(int(p.RGB[2])),
				fstr(p.Error),
			}
			for _, tr := range p.Track {
				fields = append(fields, strconv.FormatInt(int64(tr.ImageID), 10), strconv.FormatInt(int64(tr.Point2DIdx), 10))
			}
			fmt.Fprintln(w, strings.Join(fields, " "))
		}
		return nil
	})
}
