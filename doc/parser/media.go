package parser

import (
	"errors"
	"path"
	"strings"
)

var imageTypes = map[string]ImageType{
	"html":  ImageHTML,
	"latex": ImageLatex,
	"rtf":   ImageRtf,
}

// handleImage parses \image format file ["caption"] [width=..] [height=..].
func (s *Session) handleImage(parent *Node, cmdName string) {
	if !s.expectWhitespace(cmdName) {
		return
	}
	tok := s.next()
	if tok.Kind != TokenWord && tok.Kind != TokenLinkedWord {
		s.warn(InvalidArgument, "unexpected token %s as the argument of %s", tok.Kind, cmdName)
		return
	}
	format := strings.ToLower(tok.Name)
	if !s.expectWhitespace(cmdName) {
		return
	}
	typ, ok := imageTypes[format]
	if !ok {
		s.warn(InvalidArgument, "image type %s specified as the first argument of %s is not valid", format, cmdName)
		return
	}
	s.setMode(ModeFile)
	tok = s.next()
	s.setMode(ModePara)
	if tok.Kind != TokenWord {
		s.warn(InvalidArgument, "unexpected token %s as the argument of %s", tok.Kind, cmdName)
		return
	}

	img := &Image{Type: typ}
	img.Name, img.Path = s.findImage(tok.Name)
	n := s.node(KindImage, img)
	parent.AddChild(n)
	s.setMode(ModeTitle)
	s.parseInline(n, "\\image")
	img.Width, img.Height = s.parseSizeAttrs()
	s.setMode(ModePara)
}

// findImage locates an image file. It returns the name to use in output
// and the located path, which is empty for external images.
func (s *Session) findImage(name string) (string, string) {
	if s.files == nil {
		return name, ""
	}
	p, err := s.files.Locate(name, FileImage)
	var ambiguous *AmbiguousFileError
	switch {
	case err == nil:
		return path.Base(strings.ReplaceAll(name, "\\", "/")), p
	case errors.As(err, &ambiguous):
		s.warn(InvalidArgument, "image file name %s is ambigious. Possible candidates: %s", name, strings.Join(ambiguous.Candidates, ", "))
		return "", ""
	}
	if !strings.HasPrefix(name, "http:") && !strings.HasPrefix(name, "https:") {
		s.warn(InvalidArgument, "image file %s is not found in IMAGE_PATH: assuming external image.", name)
	}
	return name, ""
}

// parseSizeAttrs reads the width= and height= options after a title.
func (s *Session) parseSizeAttrs() (width, height string) {
	s.setMode(ModeTitleAttr)
	for tok := s.next(); tok.Kind == TokenWord; tok = s.next() {
		switch tok.Name {
		case "width":
			width = tok.Chars
		case "height":
			height = tok.Chars
		default:
			s.warn(InvalidArgument, "Unknown option %s after image title", tok.Name)
		}
	}
	return width, height
}

// handleDotFile parses \dotfile file ["caption"] [width=..] [height=..].
func (s *Session) handleDotFile(parent *Node, cmdName string) {
	if !s.expectWhitespace(cmdName) {
		return
	}
	s.setMode(ModeFile)
	tok := s.next()
	s.setMode(ModePara)
	if tok.Kind != TokenWord {
		s.warn(InvalidArgument, "unexpected token %s as the argument of %s", tok.Kind, cmdName)
		return
	}

	df := &DotFile{Name: tok.Name}
	n := s.node(KindDotFile, df)
	parent.AddChild(n)
	s.setMode(ModeTitle)
	s.parseInline(n, "\\dotfile")
	df.Width, df.Height = s.parseSizeAttrs()
	s.setMode(ModePara)

	if s.files == nil {
		s.warn(InvalidArgument, "included dot file %s is not found in any of the paths specified via DOTFILE_DIRS!", df.Name)
		return
	}
	p, err := s.files.Locate(df.Name, FileDot)
	var ambiguous *AmbiguousFileError
	switch {
	case err == nil:
		df.File = p
	case errors.As(err, &ambiguous):
		s.warn(InvalidArgument, "included dot file name %s is ambigious. Possible candidates: %s", df.Name, strings.Join(ambiguous.Candidates, ", "))
	default:
		s.warn(InvalidArgument, "included dot file %s is not found in any of the paths specified via DOTFILE_DIRS!", df.Name)
	}
}
