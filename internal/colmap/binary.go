package colmap

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// The binary schema is little-endian throughout: a uint64 record count
// followed by fixed-layout records, with image names stored as NUL-terminated
// byte strings.

func writeBinaryFile(path string, write func(w *bufio.Writer) error) error {
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

func writeCamerasBinary(cameras map[int32]Camera, path string) error {
	return writeBinaryFile(path, func(w *bufio.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, uint64(len(cameras))); err != nil {
			return err
		}
		for _, id := range sortedCameraIDs(cameras) {
			cam := cameras[id]
			if len(cam.Params) != cam.Model.NumParams {
				return fmt.Errorf("camera %d: model %s expects %d params, got %d",
					cam.ID, cam.Model.Name, cam.Model.NumParams, len(cam.Params))
			}
			for _, v := range []interface{}{cam.ID, cam.Model.ID, uint64(cam.Width), uint64(cam.Height)} {
				if err := binary.Write(w, binary.LittleEndian, v); err != nil {
					return err
				}
			}
			if err := binary.Write(w, binary.LittleEndian, cam.Params); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeImagesBinary(images map[int32]Image, path string) error {
	return writeBinaryFile(path, func(w *bufio.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, uint64(len(images))); err != nil {
			return err
		}
		for _, id := range sortedImageIDs(images) {
			img := images[id]
			if err := binary.Write(w, binary.LittleEndian, img.ID); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, img.Qvec); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, img.Tvec); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, img.CameraID); err != nil {
				return err
			}
			if _, err := w.WriteString(img.Name); err != nil {
				return err
			}
			if err := w.WriteByte(0); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, uint64(len(img.Points2D))); err != nil {
				return err
			}
			for _, p := range img.Points2D {
				if err := binary.Write(w, binary.LittleEndian, []float64{p.X, p.Y}); err != nil {
					return err
				}
				if err := binary.Write(w, binary.LittleEndian, p.Point3DID); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writePoints3DBinary(points map[int64]Point3D, path string) error {
	return writeBinaryFile(path, func(w *bufio.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, uint64(len(points))); err != nil {
			return err
		}
		for _, id := range sortedPointIDs(points) {
			p := points[id]
			if err := binary.Write(w, binary.LittleEndian, p.ID); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, p.XYZ); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, p.RGB); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, p.Error); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, uint64(len(p.Track))); err != nil {
				return err
			}
			for _, tr := range p.Track {
				if err := binary.Write(w, binary.LittleEndian, tr.ImageID); err != nil {
					return err
				}
				if err := binary.Write(w, binary.LittleEndian, tr.Point2DIdx); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
