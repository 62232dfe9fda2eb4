package grpcbackend

import (
	"context"
	"errors"
	"io"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const defaultChunkSize = 64 << 10

var uploadStreamDesc = &grpc.StreamDesc{StreamName: "UploadImage", ClientStreams: true}

// AddStoryOrVerseImage streams image bytes in chunks and reports the share of
// bytes handed to the transport after each chunk.
func (c *Client) AddStoryOrVerseImage(ctx context.Context, caller content.Caller, image *content.Image, isStory bool, index int) error {
	if image == nil {
		return apperrors.EK(apperrors.KindInvalidInput, "error.upload.missing", "image is required")
	}
	data, err := image.Bytes(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, "error.upload.unreadable", "image could not be read", err)
	}
	if len(data) == 0 {
		return apperrors.EK(apperrors.KindInvalidInput, "error.upload.missing", "image is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctx = imageMetadata(callerContext(ctx, caller), image, isStory, index)
	stream, err := c.conn.NewStream(ctx, uploadStreamDesc, MethodUploadImage)
	if err != nil {
		return mapError(err, "image upload failed")
	}

	image.ReportProgress(0)
	total := len(data)
	for sent := 0; sent < total; {
		end := min(sent+c.chunkSize, total)
		if err := stream.SendMsg(wrapperspb.Bytes(data[sent:end])); err != nil {
			// io.EOF means the server ended the stream; its status arrives on RecvMsg.
			if !errors.Is(err, io.EOF) {
				return mapError(err, "image upload failed")
			}
			break
		}
		sent = end
		image.ReportProgress(sent * 100 / total)
	}
	if err := stream.CloseSend(); err != nil {
		return mapError(err, "image upload failed")
	}
	if err := stream.RecvMsg(&emptypb.Empty{}); err != nil {
		return mapError(err, "image upload failed")
	}
	return nil
}
